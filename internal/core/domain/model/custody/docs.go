// Package custody tracks who holds an item inside the factory. Each Handover
// links two stations and the chain of handovers of an item must be continuous:
// a handover starts where the previous one ended.
package custody
