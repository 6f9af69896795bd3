package recon

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Daniyar8k/park-ledger-system/internal/domain/models"
	"github.com/Daniyar8k/park-ledger-system/pkg/hasher"
)

// Drift signatures are deliberately narrow: they hash only the fields whose
// divergence warrants a state reload, and normalize ordering first so that
// two stores holding the same set never disagree on storage order alone.

// VehiclesSignature hashes the id and exited-flag of every record.
// Fee or timestamp differences alone do not count as drift.
func VehiclesSignature(records []models.VehicleRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, rec.ID.String()+":"+strconv.FormatBool(rec.Exited()))
	}
	sort.Strings(lines)
	return hasher.Hash(strings.Join(lines, "\n"))
}

// ClientsSignature hashes the set of registered client ids.
func ClientsSignature(clients []models.PermanentClient) string {
	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID.String())
	}
	sort.Strings(ids)
	return hasher.Hash(strings.Join(ids, "\n"))
}

// SettingsSignature hashes credentials, site name and view mode. A change
// in the password hash therefore forces a reload, which lets the session
// guard notice rotated credentials.
func SettingsSignature(s models.Settings) string {
	parts := []string{
		s.Credentials.Username,
		s.Credentials.PasswordHash,
		s.SiteName,
		s.ViewMode.String(),
	}
	return hasher.Hash(strings.Join(parts, "|"))
}
