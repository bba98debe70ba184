// Package catalog resolves an AwoX/EGLO mesh product id to display
// metadata and a capability set: the name, model, manufacturer and icon a
// discovery document needs, and the feature bitmask the controller uses
// to decide which commands a device accepts.
//
// A CatalogResolver is a narrow interface so the controller never depends
// on the concrete registry; StaticResolver is the default, in-memory
// implementation, populated by Register calls the way the rest of this
// module's reference data is loaded.
package catalog
