/*
Package xenonpy provides the data layer of a materials-informatics
toolkit: bundled element-property datasets fetched once from a remote
catalog and cached locally, per-dataset versioned artifact stores, and
compositional descriptors computed over the element tables.

The library packages live under pkg/ and the CLI under cmd/xenonpy.
*/
package xenonpy
