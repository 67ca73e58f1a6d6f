package services

import (
	portsrepo "github.com/ledgerline/ledgerline/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline/internal/core/ports/services"
)

// NewServiceContainer wires every service facade over the repository
// container.
func NewServiceContainer(repos portsrepo.Container) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.Account),
		Journal:   NewJournalService(repos.Journal),
		Reporting: NewReportingService(repos.Reporting, repos.Account),
		RawQuery:  NewRawQueryService(repos.RawQuery),
	}
}
