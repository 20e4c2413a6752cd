// Package manage layers pool orchestration over the arena package: a
// FixedManager whose pool set is immutable after construction, a
// DynamicManager whose slots can be populated and emptied independently at
// runtime, and a Manager composing one of each behind a single interface.
package manage
