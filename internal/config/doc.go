// Package config defines the application's configuration structures and the
// loading logic that populates them from config files and environment
// variables. Configuration is validated at load time so a misconfigured
// deployment fails at startup rather than at first use.
package config
