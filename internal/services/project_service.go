package services

import (
	"math/rand/v2"
	"strings"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	ids              IDGenerator
	pick             func(n int) int
	projectValidator *validation.ProjectValidator
}

// NewProjectService creates a new ProjectService instance. pick chooses a
// palette index and defaults to a random one.
func NewProjectService(ids IDGenerator, validator *validation.Validator, pick func(n int) int) ProjectService {
	if pick == nil {
		pick = rand.IntN
	}
	return &projectServiceImpl{
		ids:              ids,
		pick:             pick,
		projectValidator: validation.NewProjectValidatorWithValidator(validator),
	}
}

// AddProject registers a project that inherits the current default rate and currency
func (p *projectServiceImpl) AddProject(state domain.AppState, name string) (domain.AppState, domain.Project, error) {
	validName, err := p.projectValidator.GetValidProjectName(name)
	if err != nil {
		return state, domain.Project{}, err
	}

	rate := state.DefaultHourlyRate
	project := domain.Project{
		ID:         p.ids(),
		Name:       validName,
		Color:      domain.ProjectPalette[p.pick(len(domain.ProjectPalette))],
		HourlyRate: &rate,
		Currency:   state.PreferredCurrency,
	}

	next := state.Clone()
	next.Projects = append(next.Projects, project)
	return next, project, nil
}

// UpdateProject shallow-merges the provided fields into the project
func (p *projectServiceImpl) UpdateProject(state domain.AppState, id string, update domain.ProjectUpdate) (domain.AppState, error) {
	if update.Currency != nil {
		normalized := domain.NormalizeCurrency(string(*update.Currency))
		update.Currency = &normalized
	}
	if err := p.projectValidator.ValidateProjectUpdate(id, update); err != nil {
		return state, err
	}
	if update.Name != nil {
		trimmed, _ := p.projectValidator.GetValidProjectName(*update.Name)
		update.Name = &trimmed
	}
	if update.ClientName != nil {
		client := strings.TrimSpace(*update.ClientName)
		update.ClientName = &client
	}

	i, ok := state.FindProject(id)
	if !ok {
		return state, errors.NewNotFoundError("project", id)
	}

	next := state.Clone()
	next.Projects[i] = update.Apply(next.Projects[i])
	return next, nil
}

// DeleteProject removes the project and every entry that references it. A
// draft or running timer on the project is kept with its project cleared.
// It returns the ids of the removed entries.
func (p *projectServiceImpl) DeleteProject(state domain.AppState, id string) (domain.AppState, []string, error) {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return state, nil, err
	}
	i, ok := state.FindProject(id)
	if !ok {
		return state, nil, errors.NewNotFoundError("project", id)
	}

	next := state.Clone()
	next.Projects = append(next.Projects[:i], next.Projects[i+1:]...)

	kept := make([]domain.TimeEntry, 0, len(next.Entries))
	removed := []string{}
	for _, entry := range next.Entries {
		if entry.ProjectID == id {
			removed = append(removed, entry.ID)
			continue
		}
		kept = append(kept, entry)
	}
	next.Entries = kept

	if next.Active != nil && next.Active.ProjectID == id {
		next.Active.ProjectID = ""
	}

	return next, removed, nil
}

// CountEntries returns how many entries reference the project
func (p *projectServiceImpl) CountEntries(state domain.AppState, id string) int {
	count := 0
	for _, entry := range state.Entries {
		if entry.ProjectID == id {
			count++
		}
	}
	return count
}
