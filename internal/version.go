package internal

// Version is the aksharmala release, set at build time via -ldflags
var Version = "0.1.0"
