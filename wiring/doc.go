// Package wiring assembles a Calculator and its DataSource four ways and
// prints the result:
//
//   - RunStatic: compile-time wiring (google/wire generated injector)
//   - RunReflective: class names read from a config file, resolved through a registry
//   - RunXML: XML bean definitions assembled into a container, setter injection
//   - RunAnnotation: components declared by their own packages, scanned by scope,
//     constructor injection with primary selection
//
// Each strategy assembles once, computes once and writes "Result: <value>".
package wiring
