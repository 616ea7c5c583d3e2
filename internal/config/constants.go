package config

// DefaultFileName is the optional Lua config read from the project root.
const DefaultFileName = "phantomjs-installer.lua"

// Lua schema field names and globals
const (
	luaGlobalInstaller = "installer"
	luaFieldPackage    = "package"
	luaFieldTargetDir  = "target_dir"
	luaFieldBinDir     = "bin_dir"
	luaFieldCDNURL     = "cdn_url"
)
