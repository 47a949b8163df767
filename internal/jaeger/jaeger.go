package jaeger

import (
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/exporters/jaeger"
)

// MustNewJaeger creates an exporter for the cafe service spans.
// otel.jaeger_endpoint selects the collector; when it is empty spans go to
// the local agent at otel.jaeger_agent_host:otel.jaeger_agent_port.
func MustNewJaeger() *jaeger.Exporter {
	exp, err := jaeger.New(endpointOption(
		viper.GetString("otel.jaeger_endpoint"),
		viper.GetString("otel.jaeger_agent_host"),
		viper.GetString("otel.jaeger_agent_port"),
	))
	if err != nil {
		panic(err)
	}

	return exp
}

func endpointOption(collector, agentHost, agentPort string) jaeger.EndpointOption {
	if collector != "" {
		return jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(collector))
	}

	var opts []jaeger.AgentEndpointOption
	if agentHost != "" {
		opts = append(opts, jaeger.WithAgentHost(agentHost))
	}
	if agentPort != "" {
		opts = append(opts, jaeger.WithAgentPort(agentPort))
	}

	return jaeger.WithAgentEndpoint(opts...)
}
