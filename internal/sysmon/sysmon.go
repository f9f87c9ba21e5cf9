// Package sysmon samples system-wide and process resource usage, and
// describes the host CPU for calibration profiles.
package sysmon

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set of this process, in bytes
}

// Sample collects a single snapshot. CPU uses interval=0 (delta since last
// call). Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			s.ProcessRSS = mi.RSS
		}
	}
	return s
}

// CPUModel returns the model name of the first CPU, or "" if unknown.
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return ""
	}
	return strings.TrimSpace(infos[0].ModelName)
}

// CPUFeatures lists the instruction set extensions that matter for
// multi-word arithmetic. The list is empty on architectures without any.
func CPUFeatures() []string {
	var f []string
	add := func(ok bool, name string) {
		if ok {
			f = append(f, name)
		}
	}
	add(xcpu.X86.HasADX, "adx")
	add(xcpu.X86.HasBMI2, "bmi2")
	add(xcpu.X86.HasAVX2, "avx2")
	add(xcpu.ARM64.HasASIMD, "asimd")
	return f
}
