/*
Package network holds the static description of the transit network: the
transport systems, their lines as ordered station lists, per-system hop
times and fares, and the shared transfer penalty.

The data is immutable for the lifetime of the process. It is loaded once at
startup from one of three sources:

  - the embedded CDMX tables (Default / EmbeddedLoader)
  - a YAML file with the same layout (FileLoader)
  - Postgres (database.NetworkRepository)

Every source returns a validated *Network.

# File layout

	name: CDMX
	currency: MXN
	transfer_penalty_minutes: 4.0
	max_display: 600
	systems:
	  - id: METRO
	    name: Metro
	    hop_minutes: 2.0
	    fare: 5
	    lines:
	      - id: L1
	        stations: ["Observatorio", "Tacubaya", ...]

System ids must be one of METRO, METROBUS or TROLEBUS.
*/
package network
