//go:build noempty

package backend

const emptyEnabled = false
