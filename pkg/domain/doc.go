/*
Package domain contains the core value model shared across the essentia packages.

It defines the semantic data types that flow through algorithm networks and are
stored in pools, the DataType enumeration used for configuration-time type
checking, and the Params map consumed by every algorithm's Configure step.
This package is kept free of I/O so that pool, streaming and scheduler can all
depend on it without cycles.

# Key Entities

  - Real / StereoSample / Matrix: The numeric value types recognized by the framework.
  - DataType: Closed enumeration over the six semantic types.
  - Params: Named configuration options with typed, validated decoding.
*/
package domain
