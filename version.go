package essentia

// Version is the current release of the library and CLI.
var Version = "0.1.0"
