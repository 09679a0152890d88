package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x2w-rook/Ludens-sub001/internal/pool"
)

func TestResultErr(t *testing.T) {
	assert.NoError(t, okResult().Err())

	err := invalidHandle().Err()
	assert.ErrorIs(t, err, InvalidHandle)
	assert.NotErrorIs(t, err, InvalidIndex)
	assert.Equal(t, "render: invalid handle", err.Error())

	var r Result
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", resourceMissing(ResourcePipeline)), &r))
	assert.Equal(t, ResourcePipeline, r.ResourceMissing.Resource)
	assert.Equal(t, "render: missing pipeline", r.Error())
}

func TestFail(t *testing.T) {
	assert.True(t, Fail(ResourceTexture, nil).OK())

	res := Fail(ResourceTexture, fmt.Errorf("gl: create texture: %w", pool.ErrExhausted))
	assert.Equal(t, PoolExhausted, res.Kind)
	assert.Equal(t, ResourceTexture, res.PoolExhausted.Resource)
	assert.Equal(t, "render: texture pool exhausted", res.Error())

	res = Fail(ResourceBuffer, fmt.Errorf("gl: draw: %w", InvalidIndex))
	assert.Equal(t, InvalidIndex, res.Kind)

	inner := bufferTypeMismatch(BufferIndex, BufferUniform)
	res = Fail(ResourceBuffer, fmt.Errorf("wrap: %w", inner))
	assert.Equal(t, inner, res)

	cause := errors.New("framebuffer incomplete")
	res = Fail(ResourceFrameBuffer, cause)
	assert.Equal(t, BackendFailure, res.Kind)
	assert.ErrorIs(t, res.Err(), cause)
	assert.Equal(t, "render: backend failure: framebuffer incomplete", res.Error())
}

func TestResultMessages(t *testing.T) {
	for _, tc := range []struct {
		res  Result
		want string
	}{
		{bufferTypeMismatch(BufferVertex, BufferIndex), "render: buffer type mismatch: expect vertex, actual index"},
		{shaderTypeMismatch(ShaderVertex, ShaderFragment), "render: shader type mismatch: expect vertex, actual fragment"},
		{textureSizeMismatch(16, 8), "render: texture size mismatch: expect 16 bytes, actual 8"},
		{passBeginMismatch(2, 1, -1), "render: pass begin: expect 2 clear values, actual 1"},
		{passBeginMismatch(2, 2, 1), "render: pass begin: attachment 1 has no matching clear value"},
		{Result{Kind: ScissorStackEmpty}, "render: scissor stack empty"},
	} {
		assert.Equal(t, tc.want, tc.res.Error())
	}
	assert.Equal(t, "ResultKind(200)", ResultKind(200).String())
}
