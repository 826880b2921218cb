// Package phys holds the physical constants used by the propagation models.
package phys

const (
	// DMK is the dispersion constant in s MHz^2 pc^-1 cm^3. With frequency
	// in MHz and dispersion measure in pc cm^-3, DMK*dm/f^2 is the
	// dispersion delay in seconds relative to infinite frequency.
	DMK = 1.0 / 2.41e-4

	// KolmogorovBeta is the spectral index of a Kolmogorov turbulence
	// spectrum, the default for all scattering and scintillation scaling
	// laws.
	KolmogorovBeta = 11.0 / 3.0
)
