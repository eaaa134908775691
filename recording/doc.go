// Package recording provides a deferred command buffer.
//
// A Recorder implements rhi.CommandBuffer but captures calls as typed
// command structures instead of executing them. Finish returns an
// immutable CommandList that can be replayed any number of times
// against any live command buffer, including one wrapped by the debug
// layer.
//
// Commands are typed structs rather than a binary encoding so that
// recordings stay inspectable and diffable in tests and tools.
//
//	rec := recording.NewRecorder()
//	rec.SetGraphicsPipeline(pipeline)
//	rec.SetVertexBuffer(vertices)
//	rec.Draw(3, 0)
//	list := rec.Finish()
//
//	list.Replay(liveCommandBuffer)
//
// A Recorder is not safe for concurrent use; a finished CommandList is
// immutable and may be replayed from multiple goroutines onto distinct
// targets.
package recording
