// Command cube_example is a minimal smoke test for internal/openglhelper,
// independent of the voxel pipeline: it opens a window and spins a single
// diffuse-lit, untextured cube using openglhelper.NewCube/NewShader directly.
package main

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"openglhelper"
)

func init() {
	runtime.LockOSThread()
}

const vertexShaderSource = `
#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoords;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 fragNormal;

void main() {
    fragNormal = mat3(model) * aNormal;
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
` + "\x00"

const fragmentShaderSource = `
#version 460 core
in vec3 fragNormal;
out vec4 outColor;

void main() {
    vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));
    float diffuse = max(dot(normalize(fragNormal), lightDir), 0.0);
    outColor = vec4(vec3(0.3 + 0.6*diffuse), 1.0);
}
` + "\x00"

func main() {
	window, err := openglhelper.NewWindow(800, 600, "voxcore - cube example", true)
	if err != nil {
		log.Fatalf("failed to create window: %v", err)
	}
	defer window.Close()

	shader, err := openglhelper.NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		log.Fatalf("failed to compile shader: %v", err)
	}
	defer shader.Delete()

	cube := openglhelper.NewCube(shader)
	defer cube.Delete()

	gl.Enable(gl.DEPTH_TEST)

	projection := mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	var angle float32
	for !window.ShouldClose() {
		window.Clear(mgl32.Vec4{0.05, 0.05, 0.1, 1.0})

		angle += 0.01
		model := mgl32.HomogRotate3DY(angle)

		shader.Use()
		shader.SetMat4("model", model)
		shader.SetMat4("view", view)
		shader.SetMat4("projection", projection)
		cube.Draw()

		window.SwapBuffers()
		window.PollEvents()
	}
}
