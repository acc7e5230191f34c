// Package kernel provides core domain primitives for the tracking system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: A decimal value object for prices, commissions and penalties
//   - GuideNumber: The immutable external identifier of a tracking guide
//   - GeoPoint: An optional geographic coordinate pair attached to state changes and incidents
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
