// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/internal/hashcache"
)

// compileWGSL compiles WGSL source to SPIR-V words. SPIR-V is
// little-endian 32-bit words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// stageSupported reports whether the hal can run a stage. Geometry and
// tessellation stages do not exist in WebGPU.
func stageSupported(stage rhi.ShaderStages) bool {
	switch stage {
	case rhi.StageVertex, rhi.StageFragment, rhi.StageCompute:
		return true
	}
	return false
}

func (d *wgpuDevice) CreateShaderProgram(desc rhi.ShaderProgramDescriptor) (rhi.ShaderProgram, error) {
	if len(desc.Sources) == 0 {
		return nil, fmt.Errorf("%w: program %q has no sources", rhi.ErrInvalidDescriptor, desc.Name)
	}

	prog := &wgpuShaderProgram{
		dev:     d,
		name:    desc.Name,
		modules: make(map[rhi.ShaderStages]stageModule, len(desc.Sources)),
	}
	hasher := hashcache.NewHasher()
	hasher.WriteString(desc.Name)

	for _, src := range desc.Sources {
		if src.Code == "" {
			prog.Release()
			return nil, fmt.Errorf("%w: program %q has an empty %s source",
				rhi.ErrInvalidDescriptor, desc.Name, src.Stage)
		}
		if !stageSupported(src.Stage) {
			prog.Release()
			return nil, fmt.Errorf("%w: %s shaders", rhi.ErrUnsupportedFeature, src.Stage)
		}
		if _, dup := prog.modules[src.Stage]; dup {
			prog.Release()
			return nil, fmt.Errorf("%w: program %q declares the %s stage twice",
				rhi.ErrInvalidDescriptor, desc.Name, src.Stage)
		}

		words, err := compileWGSL(src.Code)
		if err != nil {
			prog.Release()
			return nil, fmt.Errorf("webgpu: compiling %s shader of %q: %w", src.Stage, desc.Name, err)
		}
		module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  fmt.Sprintf("%s_%s", desc.Name, src.Stage),
			Source: hal.ShaderSource{SPIRV: words},
		})
		if err != nil {
			prog.Release()
			return nil, fmt.Errorf("webgpu: shader module for %s stage of %q: %w", src.Stage, desc.Name, err)
		}

		entry := src.EntryPoint
		if entry == "" {
			entry = "main"
		}
		prog.modules[src.Stage] = stageModule{module: module, entry: entry}
		prog.stages |= src.Stage

		hasher.WriteUint32(uint32(src.Stage))
		hasher.WriteString(src.Code)
		hasher.WriteString(entry)
	}
	prog.hash = hasher.Sum()
	return prog, nil
}
