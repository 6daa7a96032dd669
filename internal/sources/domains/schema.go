package domains

// domainsConfig represents the top-level structure of domains.yaml:
//
//	domains:
//	  - pff27.ch
//	  - pff2027.ch
type domainsConfig struct {
	Domains []string `yaml:"domains"`
}
