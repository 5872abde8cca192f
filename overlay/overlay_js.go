//go:build js

package overlay

import (
	"errors"
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"
)

var errContextLost = errors.New("WebGL context lost")

const vsSource = `#version 300 es
	layout (location = 0) in vec2 aPosition;
	layout (location = 1) in vec4 aColor;
	out lowp vec4 vColor;

	void main(void) {
		gl_Position = vec4(aPosition, 0.0, 1.0);
		vColor = aColor;
	}
`

const fsSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		outColor = vColor;
	}
`

// Overlay draws Lines with WebGL.
type Overlay struct {
	gl      *webgl.WebGL
	program webgl.Program
	aPos    int
	aCol    int
	posBuf  webgl.Buffer
	colBuf  webgl.Buffer
}

func New(gl *webgl.WebGL) (*Overlay, error) {
	vs, err := initShader(gl, gl.VERTEX_SHADER, vsSource)
	if err != nil {
		return nil, err
	}
	fs, err := initShader(gl, gl.FRAGMENT_SHADER, fsSource)
	if err != nil {
		return nil, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	if !gl.GetProgramParameter(program, gl.LINK_STATUS).(bool) {
		if gl.IsContextLost() {
			return nil, errContextLost
		}
		return nil, errors.New("link failed: " + gl.GetProgramInfoLog(program))
	}
	return &Overlay{
		gl:      gl,
		program: program,
		aPos:    gl.GetAttribLocation(program, "aPosition"),
		aCol:    gl.GetAttribLocation(program, "aColor"),
		posBuf:  gl.CreateBuffer(),
		colBuf:  gl.CreateBuffer(),
	}, nil
}

func initShader(gl *webgl.WebGL, t webgl.ShaderType, src string) (webgl.Shader, error) {
	s := gl.CreateShader(t)
	gl.ShaderSource(s, src)
	gl.CompileShader(s)
	if !gl.GetShaderParameter(s, gl.COMPILE_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Shader(js.Null()), errContextLost
		}
		return webgl.Shader(js.Null()), errors.New("compile failed")
	}
	return s, nil
}

// Clear resizes the viewport and clears the frame.
func (o *Overlay) Clear(width, height int) {
	gl := o.gl
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.05, 0.05, 0.08, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (o *Overlay) Draw(l *Lines) {
	if l.Len() == 0 {
		return
	}
	gl := o.gl
	gl.UseProgram(o.program)

	gl.BindBuffer(gl.ARRAY_BUFFER, o.posBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(l.Pos), gl.STATIC_DRAW)
	gl.VertexAttribPointer(o.aPos, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(o.aPos)

	gl.BindBuffer(gl.ARRAY_BUFFER, o.colBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(l.Col), gl.STATIC_DRAW)
	gl.VertexAttribPointer(o.aCol, 4, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(o.aCol)

	gl.DrawArrays(gl.LINES, 0, l.Len())
}

// DebugInfo returns the GPU vendor and renderer unless hidden by the browser.
func DebugInfo(gl *webgl.WebGL) (vendor, renderer string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		return "", "", false
	}
	return gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(),
		gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
		true
}
