//go:build !noempty

package backend

const emptyEnabled = true
