package augment

import (
	"rai-review-backend/internal/generation"
	"rai-review-backend/internal/resources"
)

func (b *builder) catalogArchitecture() resources.Architecture {
	return resources.CatalogArchitecture(b.in.Catalog, b.in.Characteristics.PrimaryType, b.in.Profile.FreeText())
}

func fromArchitecture(arch resources.Architecture) ReferenceArchitecture {
	return ReferenceArchitecture{
		RecommendedPattern:   arch.Pattern,
		Patterns:             arch.Patterns,
		AzureServices:        services(arch),
		GitHubRepos:          repoLinks(arch),
		Documentation:        arch.Documentation,
		QuickStartCommands:   arch.QuickStartCommands,
		DeploymentComplexity: arch.Complexity,
		Freshness:            string(arch.Freshness),
	}
}

// mergeArchitecture fills absent generated fields from arch. Documentation
// and quick start commands are not part of the generated schema and always
// come from arch.
func mergeArchitecture(g *generation.ReferenceArchitecture, arch resources.Architecture) (ReferenceArchitecture, Source) {
	fb := fromArchitecture(arch)
	if g == nil {
		return fb, SourceFallback
	}
	filled := false
	out := ReferenceArchitecture{
		RecommendedPattern:   g.RecommendedPattern,
		Patterns:             fb.Patterns,
		ArchitectureDiagram:  g.ArchitectureDiagram,
		AzureServices:        g.AzureServices,
		GitHubRepos:          g.GitHubRepos,
		Documentation:        fb.Documentation,
		QuickStartCommands:   fb.QuickStartCommands,
		EstimatedMonthlyCost: g.EstimatedMonthlyCost,
		DeploymentComplexity: g.DeploymentComplexity,
	}
	if out.RecommendedPattern == "" {
		filled = true
		out.RecommendedPattern = fb.RecommendedPattern
	}
	if len(out.AzureServices) == 0 {
		filled = true
		out.AzureServices = fb.AzureServices
	}
	if len(out.GitHubRepos) == 0 {
		filled = true
		out.GitHubRepos = fb.GitHubRepos
		out.Freshness = fb.Freshness
	}
	if out.DeploymentComplexity == "" {
		filled = true
		out.DeploymentComplexity = fb.DeploymentComplexity
	}
	if filled {
		return out, SourceMerged
	}
	return out, SourceGenerated
}

func services(arch resources.Architecture) []generation.Service {
	out := make([]generation.Service, 0, len(arch.Services))
	for _, s := range arch.Services {
		out = append(out, generation.Service{Service: s.Service, Purpose: s.Purpose})
	}
	return out
}

// repoLinks prefers fetched repository metadata and falls back to the
// catalog references behind the quick start commands.
func repoLinks(arch resources.Architecture) []generation.RepoLink {
	out := make([]generation.RepoLink, 0, len(arch.References))
	for _, r := range arch.GitHubRepos {
		out = append(out, generation.RepoLink{Name: r.FullName, URL: r.URL, Description: r.Description, Stars: r.Stars})
	}
	if len(out) > 0 {
		return out
	}
	for _, ref := range arch.References {
		out = append(out, generation.RepoLink{Name: ref.FullName(), URL: "https://github.com/" + ref.FullName()})
	}
	return out
}
