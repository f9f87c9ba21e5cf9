//go:build natdebug

package nat

// debugDiv enables the correction-count check in divLarge.
const debugDiv = true
