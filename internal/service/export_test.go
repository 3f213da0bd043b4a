package service

import "distill/internal/service/ai"

// SetProviderFactory overrides AI provider construction in tests.
func SetProviderFactory(g GatewayService, f func(ai.Config) (ai.Provider, error)) {
	g.(*gatewayService).newProvider = f
}
