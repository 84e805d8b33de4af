// Package dispatch holds the DispatchRequest aggregate: a batch of items
// carried between an outlet and the factory.
//
// A dispatch is requested by outlet or packaging staff, accepted by a
// dispatcher, started when the items leave and completed on arrival.
// Completion hands every item over to the receiving station (washing at the
// factory, outlet_return at the outlet), which is what keeps the custody
// chain continuous across trips.
package dispatch
