// Package config provides configuration parsing for vmkit.
//
// The configuration is stored in vmkit.json. Every field is optional;
// missing fields take their defaults.
//
// # Configuration File Structure
//
//	{
//	  "api": {
//	    "baseURL": "http://localhost:8080",
//	    "timeout": "15s"
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080,
//	    "fixtures": "fixtures.yaml"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// A relative fixtures path is resolved against the directory holding the
// config file.
package config
