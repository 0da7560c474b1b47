package flatfile

import (
	"strings"

	"github.com/abaasith/unibank/pkg/domain/customer"
)

// ProfileStore persists the ten-field customer profile lines:
// accountNo|name|nic|dob|phone|email|address|gender|accountType|status.
// Older nine-field records predate the status column and are upgraded with a
// default "Active" on read.
type ProfileStore struct {
	store *Store
}

// NewProfileStore returns a profile store.
func NewProfileStore(store *Store) *ProfileStore {
	return &ProfileStore{store: store}
}

// Load reads all profiles in file order, skipping malformed lines.
func (p *ProfileStore) Load() ([]customer.Profile, error) {
	lines, err := p.store.readLines(profilesFile)
	if err != nil {
		return nil, err
	}
	profiles := make([]customer.Profile, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, fieldSep)
		if len(parts) == 9 {
			// Legacy record without a status column.
			parts = append(parts, string(customer.StatusActive))
		}
		if len(parts) != 10 {
			p.store.logger.Warn("skipping malformed profile line", "line", line)
			continue
		}
		profiles = append(profiles, customer.Profile{
			AccountNo: parts[0],
			Name:      parts[1],
			NIC:       parts[2],
			DOB:       parts[3],
			Phone:     parts[4],
			Email:     parts[5],
			Address:   parts[6],
			Gender:    customer.Gender(parts[7]),
			Type:      customer.AccountType(parts[8]),
			Status:    customer.Status(parts[9]),
		})
	}
	return profiles, nil
}

// Append writes one profile line.
func (p *ProfileStore) Append(profile customer.Profile) error {
	return p.store.appendLines(profilesFile, false, formatProfile(profile))
}

// Rewrite replaces the whole profile file atomically.
func (p *ProfileStore) Rewrite(profiles []customer.Profile) error {
	lines := make([]string, len(profiles))
	for i, profile := range profiles {
		lines[i] = formatProfile(profile)
	}
	return p.store.rewrite(profilesFile, lines)
}

func formatProfile(p customer.Profile) string {
	return strings.Join([]string{
		p.AccountNo,
		p.Name,
		p.NIC,
		p.DOB,
		p.Phone,
		p.Email,
		p.Address,
		string(p.Gender),
		string(p.Type),
		string(p.Status),
	}, fieldSep)
}
