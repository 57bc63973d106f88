package restful

// Version is the library version, reported in the default User-Agent header.
const Version = "0.9.0"
