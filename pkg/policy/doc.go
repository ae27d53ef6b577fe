/*
Package policy loads debounce and throttle settings from YAML so they can be
tuned without a rebuild.

	logging:
	  level: warn
	metrics:
	  enabled: true
	policies:
	  search:
	    kind: debounce
	    wait_ms: 300
	  autosave:
	    kind: throttle
	    wait_ms: 1000
	    leading: false

A file is validated as a whole when it is parsed. Named policies are then
turned into wrapper configurations:

	f, err := policy.Load("invoke.yaml")
	cfg, err := f.Debounce("search", f.Logger(), nil)
	d, err := debounce.NewWithConfig(search, cfg)
*/
package policy
