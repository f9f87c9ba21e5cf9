//go:build !natdebug

package nat

const debugDiv = false
