// Package analysis provides frequency analysis of recorded run series,
// used by the analyze command to find dominant oscillations in the
// field's kinetic energy.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a power-of-two length
// series by radix-2 decimation in time. Length 0 and 1 pass through.
func FFT(data []float64) []complex128 {
	buf := make([]complex128, len(data))
	for i, v := range data {
		buf[i] = complex(v, 0)
	}
	fft(buf)
	return buf
}

// fft transforms buf in place: split into even and odd halves,
// transform each, recombine with the twiddle factors.
func fft(buf []complex128) {
	n := len(buf)
	if n <= 1 {
		return
	}
	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)
	for i := 0; i < half; i++ {
		even[i] = buf[2*i]
		odd[i] = buf[2*i+1]
	}
	fft(even)
	fft(odd)

	for k := 0; k < half; k++ {
		t := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n))) * odd[k]
		buf[k] = even[k] + t
		buf[k+half] = even[k] - t
	}
}

// PowerSpectrum pads the series to the next power of two, removes the
// mean (the kinetic-energy series has a large DC offset), and returns
// the magnitudes of the positive-frequency bins.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, NextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantFrequency returns the strongest non-DC frequency in hertz
// for a series sampled every dt seconds, and its spectral magnitude.
func DominantFrequency(data []float64, dt float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}

	maxIdx := 1
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	n := 2 * len(ps)
	return float64(maxIdx) / (float64(n) * dt), ps[maxIdx]
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
