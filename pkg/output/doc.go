// Package output renders command results for people and for programs.
//
// A command builds a Report: a title, sections of labelled rows and the raw
// result value. The Renderer prints it according to the selected Format:
// styled for a color terminal, plain text otherwise, or the raw value as
// JSON or YAML.
//
// Terminal styles are semantic names defined in styles/styles.yaml with
// adaptive colors for light and dark terminals.
package output
