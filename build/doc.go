// Package build orchestrates the build steps for one package: pre-build
// cleanup, the parallel dual-format compilation, entrypoint creation, and
// import map generation. Each step is independently invokable and safe to
// repeat.
package build
