package api

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"league-activity/internal/domain"
)

type RiotSuite struct {
	suite.Suite
}

func TestRiotSuite(t *testing.T) {
	suite.Run(t, new(RiotSuite))
}

func (s *RiotSuite) TestNormalizeRole() {
	cases := []struct {
		label string
		want  *domain.Role
	}{
		{"TOP", rolePtr(domain.RoleTop)},
		{"top", rolePtr(domain.RoleTop)},
		{"JUNGLE", rolePtr(domain.RoleJungle)},
		{"MID", rolePtr(domain.RoleMid)},
		{"MIDDLE", rolePtr(domain.RoleMid)},
		{"middle", rolePtr(domain.RoleMid)},
		{"BOT", rolePtr(domain.RoleADC)},
		{"BOTTOM", rolePtr(domain.RoleADC)},
		{"SUPPORT", rolePtr(domain.RoleSupport)},
		{"UTILITY", rolePtr(domain.RoleSupport)},
		{"utility", rolePtr(domain.RoleSupport)},
		{"", nil},
		{"Invalid", nil},
		{"NONE", nil},
	}

	for _, tc := range cases {
		got := NormalizeRole(tc.label)
		if tc.want == nil {
			s.Nil(got, "label %q", tc.label)
			continue
		}
		s.Require().NotNil(got, "label %q", tc.label)
		s.Equal(*tc.want, *got, "label %q", tc.label)
	}
}

func (s *RiotSuite) TestAccountLookupURLEscapesNameSegments() {
	got := accountLookupURL("euw1", "Summoner Name", "EU W")
	s.Equal("https://europe.api.riotgames.com/riot/account/v1/accounts/by-riot-id/Summoner%20Name/EU%20W", got)

	got = accountLookupURL("na1", "Plain", "NA1")
	s.Equal("https://americas.api.riotgames.com/riot/account/v1/accounts/by-riot-id/Plain/NA1", got)
}

func (s *RiotSuite) TestQueueCategory() {
	s.Equal(domain.QueueRankedSolo, queueCategory(420))
	s.Equal(domain.QueueRankedFlex, queueCategory(440))
	s.Equal(domain.QueueOther, queueCategory(450))
	s.Equal(domain.QueueOther, queueCategory(0))
}

func (s *RiotSuite) TestRoutingRegion() {
	s.Equal("americas", routingRegion("na1"))
	s.Equal("americas", routingRegion("br1"))
	s.Equal("europe", routingRegion("euw1"))
	s.Equal("europe", routingRegion("EUN1"))
	s.Equal("asia", routingRegion("kr"))
	s.Equal("sea", routingRegion("oc1"))
}

func rolePtr(r domain.Role) *domain.Role {
	return &r
}
