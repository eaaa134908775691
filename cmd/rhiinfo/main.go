// Command rhiinfo opens a device and reports its capabilities.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	_ "github.com/gogpu/rhi/backend/gl"
	_ "github.com/gogpu/rhi/backend/webgpu"
)

func main() {
	name := flag.String("backend", "", "backend to open (default: best available)")
	flag.Parse()

	available := backend.Available()
	sort.Strings(available)
	fmt.Printf("registered backends: %s\n", strings.Join(available, ", "))

	var b backend.Backend
	if *name != "" {
		b = backend.Get(*name)
		if b == nil {
			log.Fatalf("backend %q is not registered", *name)
		}
	} else {
		b = backend.Default()
		if b == nil {
			log.Fatal("no backend available")
		}
	}

	dev, err := b.Open(rhi.NullDeviceHandle)
	if err != nil {
		log.Fatalf("open %s device: %v", b.Name(), err)
	}
	defer dev.Close()

	printCaps(b.Name(), dev.Caps())
}

func printCaps(name string, caps rhi.RenderingCaps) {
	fmt.Printf("\ndevice (%s backend)\n", name)
	fmt.Printf("  shading language:  %s\n", caps.ShadingLanguage)
	fmt.Printf("  screen origin:     %s\n", caps.ScreenOrigin)
	fmt.Printf("  clipping range:    %s\n", caps.ClippingRange)

	fmt.Println("\nfeatures")
	features := []struct {
		name string
		has  bool
	}{
		{"render targets", caps.HasRenderTargets},
		{"3D textures", caps.Has3DTextures},
		{"cube textures", caps.HasCubeTextures},
		{"texture arrays", caps.HasTextureArrays},
		{"cube texture arrays", caps.HasCubeTextureArrays},
		{"multisample textures", caps.HasMultiSampleTextures},
		{"samplers", caps.HasSamplers},
		{"constant buffers", caps.HasConstantBuffers},
		{"storage buffers", caps.HasStorageBuffers},
		{"geometry shaders", caps.HasGeometryShaders},
		{"tessellation shaders", caps.HasTessellationShaders},
		{"compute shaders", caps.HasComputeShaders},
		{"instancing", caps.HasInstancing},
		{"offset instancing", caps.HasOffsetInstancing},
		{"viewport arrays", caps.HasViewportArrays},
		{"stream outputs", caps.HasStreamOutputs},
	}
	for _, f := range features {
		mark := " "
		if f.has {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, f.name)
	}

	fmt.Println("\nlimits")
	fmt.Printf("  2D texture size:      %d\n", caps.Max2DTextureSize)
	fmt.Printf("  3D texture size:      %d\n", caps.Max3DTextureSize)
	fmt.Printf("  cube texture size:    %d\n", caps.MaxCubeTextureSize)
	fmt.Printf("  texture array layers: %d\n", caps.MaxTextureArrayLayers)
	fmt.Printf("  color attachments:    %d\n", caps.MaxRenderTargetAttachments)
	fmt.Printf("  constant buffer size: %d\n", caps.MaxConstantBufferSize)
	fmt.Printf("  anisotropy:           %d\n", caps.MaxAnisotropy)
	fmt.Printf("  viewports:            %d\n", caps.MaxViewports)
	fmt.Printf("  compute work groups:  %d x %d x %d\n",
		caps.MaxComputeWorkGroups[0], caps.MaxComputeWorkGroups[1], caps.MaxComputeWorkGroups[2])
	fmt.Printf("  work group size:      %d x %d x %d\n",
		caps.MaxComputeWorkGroupSize[0], caps.MaxComputeWorkGroupSize[1], caps.MaxComputeWorkGroupSize[2])
}
