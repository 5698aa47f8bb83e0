package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wildstyl3r/dustheat/internal/constants"
	"github.com/wildstyl3r/dustheat/internal/heating"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

type Config struct {
	OutputDir string
	Models    map[string]ModelParameters
	ModelParameters
	GrainList    string
	InputUnits   []string
	isDefinedMap map[string]struct{}
}

func (c *Config) isDefined(path []string, meta *toml.MetaData) bool {
	if _, sureDefined := c.isDefinedMap[strings.Join(path, "#")]; sureDefined {
		return true
	}
	return meta.IsDefined(path...)
}

func (c *Config) markDefined(path ...string) {
	c.isDefinedMap[strings.Join(path, "#")] = struct{}{}
}

// LoadConfig decodes configFileName (".toml" may be omitted) and expands the grain list if any.
// Without a Models table the global parameters form a single model named after the file.
func LoadConfig(configFileName string) (Config, toml.MetaData, error) {
	var config Config
	config.isDefinedMap = map[string]struct{}{}
	configFileName = strings.TrimSuffix(configFileName, ".toml") + ".toml"
	meta, err := toml.DecodeFile(configFileName, &config)
	if err != nil {
		return config, meta, fmt.Errorf("decoding %s: %w", configFileName, err)
	}

	var unitsConflict []string
	config.InputUnits, unitsConflict = checkUnits(config.InputUnits)
	if len(unitsConflict) > 0 {
		return config, meta, fmt.Errorf("found input unit conflict: %v", unitsConflict)
	}

	if len(config.GrainList) > 0 {
		if len(config.Models) > 0 {
			return config, meta, errors.New("simultaneous grain list and direct model specification not supported")
		}
		grains, err := utils.ReadFloatPairs(config.GrainList)
		if err != nil {
			return config, meta, fmt.Errorf("grain list reading error: %w", err)
		}
		filename := utils.GetFilename(config.GrainList)
		config.Models = make(map[string]ModelParameters, len(grains))
		for line := range grains {
			modelName := filename + "_l" + strconv.Itoa(line+1)
			config.Models[modelName] = ModelParameters{
				GrainRadius: grains[line][0],
				GasDensity:  grains[line][1],
			}
			config.markDefined("Models", modelName, "GrainRadius")
			config.markDefined("Models", modelName, "GasDensity")
		}
	}

	if len(config.Models) == 0 {
		config.Models = map[string]ModelParameters{
			utils.GetFilename(configFileName): {},
		}
	}

	return config, meta, nil
}

type ModelParameters struct {
	GasDensity          float64 // [g cm^-3]
	HydrogenDensity     float64 // [cm^-3]
	GrainRadius         float64 // [micron]
	HydrogenFraction    float64 // hydrogen mass fraction
	ElectronRatio       float64 // n_e / n_H
	LogTMin             float64 // log10 [K]
	LogTMax             float64 // log10 [K]
	NTemperatures       int
	TransitionPrecision float64 // [dex]
	SkipNonFinite       bool
	MakeDir             bool

	ElectronDensity float64 `toml:"-"` // [cm^-3]

	_verbose bool
	_threads int
}

func (p *ModelParameters) Verbose() bool {
	return p._verbose
}

func (p *ModelParameters) SetVerbosity(verbose bool) {
	p._verbose = verbose
}

func (p *ModelParameters) Threads() int {
	return max(p._threads, 1)
}

func (p *ModelParameters) SetThreads(threads int) {
	p._threads = threads
}

// Defaults reproduce the reference sweep: solar abundance, 5 nm grain, 1e-20 g cm^-3.
func Defaults() ModelParameters {
	var p ModelParameters
	v := reflect.ValueOf(&p).Elem()
	for name, value := range defaultValues {
		v.FieldByName(name).Set(reflect.ValueOf(value))
	}
	p.Derive(false)
	return p
}

var defaultValues = map[string]any{ // in base units
	"GasDensity":          1e-20, //[g cm^-3]
	"GrainRadius":         5e-3,  //[micron]
	"HydrogenFraction":    constants.SolarHydrogenFraction,
	"ElectronRatio":       constants.ElectronsPerHydrogen,
	"LogTMin":             0.,
	"LogTMax":             9.,
	"NTemperatures":       201,
	"TransitionPrecision": 1e-6,
	"SkipNonFinite":       false,
	"MakeDir":             false,
}

var fieldsXor = map[string][]string{
	"GasDensity":      {"HydrogenDensity"},
	"HydrogenDensity": {"GasDensity"},
}

var valueUnits = map[string][]UnitElement{
	"GasDensity": {
		{Class: MassDensity, Power: 1},
	},
	"HydrogenDensity": {
		{Class: NumberDensity, Power: 1},
	},
	"GrainRadius": {
		{Class: Length, Power: 1},
	},
}

func (p *ModelParameters) toBase(parameterNames, units []string) {
	reflected := reflect.ValueOf(p).Elem()
	for _, name := range parameterNames {
		field := reflected.FieldByName(name)
		if classes, some := valueUnits[name]; some && field.CanFloat() {
			field.SetFloat(ToBase(field.Float(), classes, units))
		}
	}
}

func checkAmbiguities(path []string, meta *toml.MetaData, config *Config) (ambiguities [][]string) {
	for field := range fieldsXor {
		if !config.isDefined(append(path, field), meta) {
			continue
		}
		for _, alternative := range fieldsXor[field] {
			if field < alternative && config.isDefined(append(path, alternative), meta) {
				ambiguities = append(ambiguities, []string{field, alternative})
			}
		}
	}
	return
}

/*
field value priority:
1. model table
2. global table
3. default
a field defined at a higher level also suppresses its xor alternatives at lower levels
*/

// Unify resolves the parameters of modelName, converts them to base units, derives the
// number densities and validates the result.
func (config *Config) Unify(modelName string, meta *toml.MetaData) (ModelParameters, error) {
	if amb := checkAmbiguities(nil, meta, config); len(amb) > 0 {
		return ModelParameters{}, fmt.Errorf("found global ambiguities %v", amb)
	}
	if amb := checkAmbiguities([]string{"Models", modelName}, meta, config); len(amb) > 0 {
		return ModelParameters{}, fmt.Errorf("found model ambiguities %v", amb)
	}

	modelConfig := config.Models[modelName]
	local := reflect.ValueOf(&modelConfig).Elem()
	global := reflect.ValueOf(&config.ModelParameters).Elem()
	fields := local.Type()

	var discovered []string
	excluded := map[string]struct{}{}
	exclude := func(fieldName string) {
		for _, alternative := range fieldsXor[fieldName] {
			excluded[alternative] = struct{}{}
		}
	}

	for i := range fields.NumField() {
		name := fields.Field(i).Name
		if config.isDefined([]string{"Models", modelName, name}, meta) {
			discovered = append(discovered, name)
			exclude(name)
		}
	}
	for i := range fields.NumField() {
		name := fields.Field(i).Name
		if _, x := excluded[name]; x || !fields.Field(i).IsExported() {
			continue
		}
		if !config.isDefined([]string{"Models", modelName, name}, meta) && meta.IsDefined(name) {
			local.Field(i).Set(global.Field(i))
			discovered = append(discovered, name)
			exclude(name)
		}
	}

	modelConfig.toBase(discovered, config.InputUnits)

	for name, value := range defaultValues {
		_, x := excluded[name]
		if !x && !slices.Contains(discovered, name) {
			local.FieldByName(name).Set(reflect.ValueOf(value))
		}
	}

	modelConfig.Derive(slices.Contains(discovered, "HydrogenDensity"))
	modelConfig.SetVerbosity(config.Verbose())
	modelConfig.SetThreads(config._threads)
	if err := modelConfig.Validate(); err != nil {
		return modelConfig, fmt.Errorf("model %s: %w", modelName, err)
	}
	return modelConfig, nil
}

// Derive fills the number densities from the gas density, or the gas density from
// the hydrogen density when fromHydrogen is set.
func (p *ModelParameters) Derive(fromHydrogen bool) {
	if fromHydrogen {
		p.GasDensity = p.HydrogenDensity * constants.MassH / p.HydrogenFraction
	} else {
		p.HydrogenDensity = p.GasDensity * p.HydrogenFraction / constants.MassH
	}
	p.ElectronDensity = p.ElectronRatio * p.HydrogenDensity
}

func (p *ModelParameters) Validate() error {
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"GrainRadius", p.GrainRadius},
		{"GasDensity", p.GasDensity},
		{"HydrogenFraction", p.HydrogenFraction},
		{"ElectronRatio", p.ElectronRatio},
		{"HydrogenDensity", p.HydrogenDensity},
		{"ElectronDensity", p.ElectronDensity},
		{"TransitionPrecision", p.TransitionPrecision},
	} {
		if err := heating.Positive(check.name, check.value); err != nil {
			return err
		}
	}
	if p.HydrogenFraction > 1 {
		return fmt.Errorf("%w: HydrogenFraction = %g exceeds 1", heating.ErrInvalidParameter, p.HydrogenFraction)
	}
	if !utils.IsFinite(p.LogTMin) || !utils.IsFinite(p.LogTMax) || p.LogTMin >= p.LogTMax {
		return fmt.Errorf("%w: temperature range [%g, %g]", heating.ErrInvalidParameter, p.LogTMin, p.LogTMax)
	}
	if math.Pow(10., p.LogTMin) <= 0 || math.IsInf(math.Pow(10., p.LogTMax), 1) {
		return fmt.Errorf("%w: temperature range [1e%g, 1e%g] K not representable", heating.ErrInvalidParameter, p.LogTMin, p.LogTMax)
	}
	if p.NTemperatures < 2 {
		return fmt.Errorf("%w: NTemperatures = %d", heating.ErrInvalidParameter, p.NTemperatures)
	}
	return nil
}

// SetRuntime copies command-line runtime settings onto the global parameters.
func (config *Config) SetRuntime(threads int, verbose bool) {
	config.SetThreads(threads)
	config.SetVerbosity(verbose)
}
