package model

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/wildstyl3r/dustheat/internal/chart"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

type DataExtractor struct {
	model *Model
}

func NewDataExtractor(model *Model) *DataExtractor {
	return &DataExtractor{model: model}
}

// Save writes the selected outputs of the model. With stdout set only the heating
// coefficient table is written, to the configured writer.
func (de *DataExtractor) Save(df DataFlags) error {
	if *df.stdout {
		table := df.tables["Heating coefficient"]
		return utils.WriteCSV(df.out, table.columnNames, table.rows(de))
	}

	for _, name := range utils.SortedKeys(df.tables) {
		table := df.tables[name]
		if !*table.saveFlag && !*df.all {
			continue
		}
		file, err := utils.OpenFile(de.model.Parameters.MakeDir, df.outputPath, table.fileSuffix, de.model.Name)
		if err != nil {
			return fmt.Errorf("unable to save %s: %w", name, err)
		}
		err = utils.WriteCSV(file, table.columnNames, table.rows(de))
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("error writing %s: %w", name, err)
		}
		log.WithFields(log.Fields{"model": de.model.Name, "file": file.Name()}).Debug(name + " saved")
	}

	if *df.plot.saveFlag || *df.all {
		path, err := utils.OutputPath(de.model.Parameters.MakeDir, df.outputPath, df.plot.fileSuffix, de.model.Name, ".png")
		if err != nil {
			return fmt.Errorf("unable to save plot: %w", err)
		}
		p, err := chart.Coefficient(de.model.Name, de.model.Samples)
		if err != nil {
			return fmt.Errorf("unable to draw %s: %w", de.model.Name, err)
		}
		if err := chart.Save(p, path); err != nil {
			return fmt.Errorf("unable to save plot: %w", err)
		}
		log.WithFields(log.Fields{"model": de.model.Name, "file": path}).Debug("plot saved")
	}
	return nil
}
