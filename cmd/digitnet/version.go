package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

func runVersion(w io.Writer) {
	fmt.Fprintf(w, "digitnet %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "CPU: %s (%d logical cores)\n", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores)

	var features []string
	for _, f := range []struct {
		id   cpuid.FeatureID
		name string
	}{
		{cpuid.SSE2, "sse2"},
		{cpuid.AVX, "avx"},
		{cpuid.AVX2, "avx2"},
		{cpuid.FMA3, "fma3"},
		{cpuid.AVX512F, "avx512f"},
		{cpuid.ASIMD, "asimd"},
	} {
		if cpuid.CPU.Supports(f.id) {
			features = append(features, f.name)
		}
	}
	if len(features) == 0 {
		features = append(features, "none detected")
	}
	fmt.Fprintf(w, "Features: %s\n", strings.Join(features, " "))
}
