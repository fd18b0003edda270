/*
Package ast holds the data model produced while compiling a GraphQL schema
definition document: the declaration table, raw field signatures, resolved type
descriptors, the linked schema model and the derived resolver signatures.

Names follow the [GraphQL specification] wherever one exists.

[GraphQL specification]: https://spec.graphql.org
*/
package ast
