// Package model implements the implicit model: a named, cycle-free
// directed-acyclic graph of component.Component nodes, evaluable at any
// point in space.
//
// Separate sync.RWMutex locks guard the node catalog (muNodes) and the
// edge/wiring catalog (muEdges), and mutation methods validate fully
// before touching state so a failed call leaves the model unchanged.
// Topological ordering uses a three-color (White/Gray/Black) DFS over the
// producer->consumer wiring; Wire's cycle detection is a breadth-first
// forward reachability walk from the consumer.
//
// Model is not safe for concurrent mutation: callers serialize
// AddFunction/AddOperation/AddConstant/Wire/Remove/SetParameter
// themselves. EvaluateAt is safe to call concurrently with any number of
// other EvaluateAt calls, and with sampler/extraction reads, provided no
// mutation is in flight.
package model
