package service

import (
	"github.com/vaultpass/passforge-go/internal/config"
	"github.com/vaultpass/passforge-go/internal/model"
)

// ResolveRequest fills missing wire fields from d. Values that are present
// are kept as sent, even when out of range, so validation can reject them.
func ResolveRequest(req model.GenerateRequest, d config.Defaults) model.GenerationRequest {
	return model.GenerationRequest{
		Count:      intOrDefault(req.Count, d.Count),
		Length:     intOrDefault(req.Length, d.Length),
		CostFactor: intOrDefault(req.CostFactor, d.CostFactor),
		Uppercase:  boolOrDefault(req.Options.Uppercase, d.Uppercase),
		Lowercase:  boolOrDefault(req.Options.Lowercase, d.Lowercase),
		Numbers:    boolOrDefault(req.Options.Numbers, d.Numbers),
		Special:    boolOrDefault(req.Options.Special, d.Special),
		EasyToRead: boolOrDefault(req.Options.EasyToRead, d.EasyToRead),
	}
}

func intOrDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
