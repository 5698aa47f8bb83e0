package constants

// CGS units throughout.
const KBoltz float64 = 1.380658e-16 // [erg K^-1]
const AMU float64 = 1.660539e-24    // [g]
const EVToErg float64 = 1.602e-12   // [erg eV^-1]
const MassH = 1.00784 * AMU         // [g]
const MassE = 0.00054858 * AMU      // [g]
const HERatio = MassE / MassH

// Solar abundance and the ionization assumption of the reference sweep.
const SolarHydrogenFraction = 10. / 14.
const ElectronsPerHydrogen = 1.2
