// Package domain contains the core business entities, value objects, and
// domain logic of the application: boards, their ordered columns, and the
// cards that live inside each column. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
