//go:build !darwin || nometal

package backend

const metalEnabled = false
