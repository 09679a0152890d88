package render

// SwapChainPassInfo describes the pass a backend creates for its swap chain:
// one color attachment in format that is cleared and stored, and a D24S8
// depth-stencil attachment that is cleared and discarded.
func SwapChainPassInfo(format Format) PassInfo {
	return PassInfo{Attachments: []PassAttachment{
		{Format: format, LoadOp: LoadClear, StoreOp: StoreStore},
		{Format: FormatD24S8, LoadOp: LoadClear, StoreOp: StoreDiscard},
	}}
}

// SwapChainTextureFormat returns the color format of the swap chain images.
func (d Device) SwapChainTextureFormat() (Format, Result) {
	dev := d.live()
	if dev == nil {
		return FormatUndefined, invalidHandle()
	}
	return dev.backend.SwapChainTextureFormat(), dev.report(okResult())
}

// SwapChainPass returns the pass for rendering into the swap chain. The pass
// belongs to the device and cannot be deleted.
func (d Device) SwapChainPass() (Pass, Result) {
	dev := d.live()
	if dev == nil {
		return Pass{}, invalidHandle()
	}
	key := dev.backend.SwapChainPass()
	p := dev.backend.Pass(key)
	if p == nil {
		return Pass{}, dev.report(resourceMissing(ResourcePass))
	}
	var pass Pass
	pass.bind(p.ID, key)
	return pass, dev.report(okResult())
}

// SwapChainFrameBuffer returns the frame buffer of the current swap chain
// image. A zero handle stands for the default frame buffer, which
// BeginRenderPass targets when given a zero frame buffer.
func (d Device) SwapChainFrameBuffer() (FrameBuffer, Result) {
	dev := d.live()
	if dev == nil {
		return FrameBuffer{}, invalidHandle()
	}
	var fb FrameBuffer
	key := dev.backend.SwapChainFrameBuffer()
	if f := dev.backend.FrameBuffer(key); f != nil {
		fb.bind(f.ID, key)
	}
	return fb, dev.report(okResult())
}
