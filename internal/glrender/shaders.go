// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glrender

// Shader sources for the UI pass. GLSL 410 core, matching the gl41
// backend; the vertex layout mirrors drawdata.Vertex.

const vertexShaderSrc = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vUV;
out vec4 vColor;

void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uProjection * vec4(aPos.xy, 0.0, 1.0);
}
`

const fragmentShaderSrc = `#version 410 core
in vec2 vUV;
in vec4 vColor;

uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
    fragColor = vColor * texture(uTexture, vUV.st);
}
`
