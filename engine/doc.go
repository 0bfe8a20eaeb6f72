// Package engine evaluates parsed scene definitions as a live dependency
// graph.
//
// Every defined variable is bound to a [Node]. A node collects one value per
// parameter of its function, either from the host (number and list
// parameters, through a [Watcher]) or from the node of another variable
// (every other parameter). Once all parameters hold defined values the node
// constructs entities through its [Descriptor].
//
// A node broadcasts over list-valued arguments: when one or more arguments
// are lists, the node builds one entity per element of the shortest list and
// hands each entity the element at its own index. Scalar arguments and
// parameters flagged [ArgSpec.TakesList] never constrain the length. If a
// change leaves the broadcast length as it was, existing entities are updated
// in place through [Entity.ArgChanged]; otherwise they are disposed and
// rebuilt.
//
// The [Evaluator] drives the graph from host change events. Each event is one
// batch:
//
//	ev.StartBatch()
//	for _, x := range expressions {
//		ev.ProcessSourceExpression(x.Text, x.ID)
//	}
//	ev.EndBatch()
//
// Expressions whose text did not change since the previous batch are not
// parsed again. Variables that no expression produced during the batch are
// torn down in EndBatch, and every node that depended on them becomes
// undefined.
//
// Errors never escape the evaluator. Parse failures, unknown functions,
// duplicate variables, and construction failures are recorded against the
// id of the expression that caused them and are available from
// [Context.Errors].
package engine
