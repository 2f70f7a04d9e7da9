// Package models defines the core domain models for CoHouse.
//
// # Records
//
// The following models are persisted by the storage layer:
//   - Group: A household and its ordered member list
//   - Settlement: A shared expense and the shares owed toward it
//   - Payment: A settle-up transfer between two members
//   - Task: A recurring chore rotated among assignees
//
// Members are identified by opaque ID strings issued by the external
// identity provider. Display names are carried alongside for rendering.
//
// # Money
//
// All amounts are whole currency units held in Money (int64). There is no
// fractional sub-unit in this domain, so no floating point appears anywhere
// in the model. ParseMoney is the only place user-entered text becomes Money.
//
// # Design Principles
//
// 1. **Typed records**: Fixed, named fields instead of open maps, so malformed
// input fails at the boundary
// 2. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 3. **Order is data**: Member and share order is preserved end to end
package models
