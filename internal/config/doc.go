// Package config loads hashroute server configuration.
//
// Configuration lives in hashroute.json or hashroute.yaml in the working
// directory. Missing fields take their defaults from New.
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "localhost", "port": 8080},
//	  "router": {"prefix": "#"},
//	  "log": {"level": "info", "format": "text"},
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "bridge": {"eventsPerSecond": 20, "burst": 10, "readLimit": 65536}
//	}
//
// The same document in YAML:
//
//	server:
//	  host: localhost
//	  port: 8080
//	router:
//	  prefix: "#"
//	log:
//	  level: debug
//	  format: json
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
