package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shared vertex shader: chunk-local geometry offset longitudinally by the
// owning chunk's current offset. Recycling a chunk only changes uChunkZ.
const cityVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 aColor;
layout(location = 3) in vec2 aUV;
layout(location = 4) in float aEmissive;

uniform mat4 uView;
uniform mat4 uProj;
uniform float uChunkZ;

out vec3 vNormal;
out vec3 vColor;
out vec2 vUV;
out float vEmissive;
out vec3 vWorldPos;
out vec3 vViewPos;

void main() {
    vec3 world = aPos + vec3(0.0, 0.0, uChunkZ);
    vec4 view = uView * vec4(world, 1.0);
    vWorldPos = world;
    vViewPos = view.xyz;
    vNormal = aNormal;
    vColor = aColor;
    vUV = aUV;
    vEmissive = aEmissive;
    gl_Position = uProj * view;
}
` + "\x00"

// Solid fragment shader: flat-coloured geometry lit by the three-light rig
// (ambient + directional moon + point fill), exponential fog, and a pulsing
// emissive channel for rooftop beacons.
const solidFragSrc = `#version 410 core

uniform vec3 uFogColor;
uniform float uFogDensity;
uniform float uAmbient;
uniform vec3 uMoonDir;
uniform vec3 uMoonColor;
uniform vec3 uFillPos;
uniform vec3 uFillColor;
uniform float uTime;

in vec3 vNormal;
in vec3 vColor;
in float vEmissive;
in vec3 vWorldPos;
in vec3 vViewPos;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    float diff = max(dot(n, uMoonDir), 0.0);
    vec3 toFill = uFillPos - vWorldPos;
    float fd = length(toFill);
    float atten = 1.0 / (1.0 + 0.015 * fd * fd);
    vec3 light = vec3(uAmbient) + uMoonColor * diff + uFillColor * atten;

    vec3 col = vColor * light;
    float pulse = 0.55 + 0.45 * sin(uTime * 3.2);
    col += vColor * vEmissive * pulse;

    float fog = clamp(exp(-uFogDensity * length(vViewPos)), 0.0, 1.0);
    FragColor = vec4(mix(uFogColor, col, fog), 1.0);
}
` + "\x00"

// Facade fragment shader: samples the per-building window raster. Lit
// windows act as their own emissive mask, so they stay bright regardless of
// the light rig; dark wall pixels take the normal lighting.
const facadeFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform vec3 uFogColor;
uniform float uFogDensity;
uniform float uAmbient;
uniform vec3 uMoonDir;
uniform vec3 uMoonColor;
uniform vec3 uFillPos;
uniform vec3 uFillColor;

in vec3 vNormal;
in vec3 vColor;
in vec2 vUV;
in vec3 vWorldPos;
in vec3 vViewPos;

out vec4 FragColor;

void main() {
    vec4 t = texture(uTex, vUV);
    vec3 n = normalize(vNormal);
    float diff = max(dot(n, uMoonDir), 0.0);
    vec3 toFill = uFillPos - vWorldPos;
    float fd = length(toFill);
    float atten = 1.0 / (1.0 + 0.015 * fd * fd);
    vec3 light = vec3(uAmbient) + uMoonColor * diff + uFillColor * atten;

    float lum = dot(t.rgb, vec3(0.299, 0.587, 0.114));
    vec3 col = t.rgb * vColor * max(light, vec3(lum));

    float fog = clamp(exp(-uFogDensity * length(vViewPos)), 0.0, 1.0);
    FragColor = vec4(mix(uFogColor, col, fog), 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
