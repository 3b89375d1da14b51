package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/blang/semver"

	"github.com/s0up4200/arrcore/arr"
	"github.com/s0up4200/arrcore/value"
)

// ServiceStatus is the system/status payload of an *arr service.
type ServiceStatus struct {
	AppName                string `json:"appName"`
	InstanceName           string `json:"instanceName"`
	Version                string `json:"version"`
	BuildTime              string `json:"buildTime"`
	IsDebug                bool   `json:"isDebug"`
	IsProduction           bool   `json:"isProduction"`
	IsAdmin                bool   `json:"isAdmin"`
	IsUserInteractive      bool   `json:"isUserInteractive"`
	StartupPath            string `json:"startupPath"`
	AppData                string `json:"appData"`
	OsName                 string `json:"osName"`
	OsVersion              string `json:"osVersion"`
	IsNetCore              bool   `json:"isNetCore"`
	IsLinux                bool   `json:"isLinux"`
	IsOsx                  bool   `json:"isOsx"`
	IsWindows              bool   `json:"isWindows"`
	IsDocker               bool   `json:"isDocker"`
	Mode                   string `json:"mode"`
	Branch                 string `json:"branch"`
	DatabaseType           string `json:"databaseType,omitempty"`
	DatabaseVersion        string `json:"databaseVersion,omitempty"`
	Authentication         string `json:"authentication"`
	MigrationVersion       int    `json:"migrationVersion"`
	URLBase                string `json:"urlBase"`
	RuntimeVersion         string `json:"runtimeVersion"`
	RuntimeName            string `json:"runtimeName"`
	StartTime              string `json:"startTime"`
	PackageVersion         string `json:"packageVersion"`
	PackageAuthor          string `json:"packageAuthor"`
	PackageUpdateMechanism string `json:"packageUpdateMechanism"`
}

// HealthCheck is one entry of the health endpoint.
type HealthCheck struct {
	Source  string `json:"source"`
	Type    string `json:"type"`
	Message string `json:"message"`
	WikiURL string `json:"wikiUrl"`
}

func (h HealthCheck) IsWarning() bool { return h.Type == "warning" }
func (h HealthCheck) IsError() bool   { return h.Type == "error" }

func (h HealthCheck) ToMap() map[string]any {
	typ := h.Type
	if typ == "" {
		typ = "unknown"
	}
	return map[string]any{
		"source":   h.Source,
		"type":     typ,
		"message":  h.Message,
		"wiki_url": h.WikiURL,
	}
}

type HealthChecks []HealthCheck

func (c HealthChecks) Warnings() HealthChecks {
	var out HealthChecks
	for _, h := range c {
		if h.IsWarning() {
			out = append(out, h)
		}
	}
	return out
}

func (c HealthChecks) Errors() HealthChecks {
	var out HealthChecks
	for _, h := range c {
		if h.IsError() {
			out = append(out, h)
		}
	}
	return out
}

func (c HealthChecks) HasErrors() bool   { return len(c.Errors()) > 0 }
func (c HealthChecks) HasWarnings() bool { return len(c.Warnings()) > 0 }

// HealthIssue is a health check attached to a SystemStatus.
type HealthIssue struct {
	Type    string
	Message string
	Source  string
	WikiURL string
}

func (h HealthIssue) ToMap() map[string]any {
	return map[string]any{
		"type":     h.Type,
		"message":  h.Message,
		"source":   h.Source,
		"wiki_url": nilIfEmpty(h.WikiURL),
	}
}

// SystemStatus is the service-independent summary of a running instance.
type SystemStatus struct {
	Source         arr.Service
	Version        string
	IsHealthy      bool
	StartTime      *value.Timestamp
	Branch         string
	RuntimeVersion string
	OsName         string
	HealthIssues   []HealthIssue
}

func (s SystemStatus) HasIssues() bool { return len(s.HealthIssues) > 0 }
func (s SystemStatus) IssueCount() int { return len(s.HealthIssues) }

// Uptime is the formatted time since start, or "" if the start time is
// unknown.
func (s SystemStatus) Uptime() string {
	if s.StartTime == nil {
		return ""
	}
	return s.StartTime.DiffFrom(value.Now()).Format()
}

// SemVer parses Version leniently. *arr versions carry four components
// (5.2.6.8376); the fourth one is kept as build metadata.
func (s SystemStatus) SemVer() (semver.Version, error) {
	v := s.Version
	if parts := strings.Split(v, "."); len(parts) > 3 {
		v = strings.Join(parts[:3], ".") + "+" + strings.Join(parts[3:], ".")
	}
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("parse version %q: %w", s.Version, err)
	}
	return parsed, nil
}

// AtLeast reports whether the running version is >= minVersion. Unparseable
// versions never satisfy the check.
func (s SystemStatus) AtLeast(minVersion string) bool {
	have, err := s.SemVer()
	if err != nil {
		return false
	}
	want, err := semver.ParseTolerant(minVersion)
	if err != nil {
		return false
	}
	return have.GTE(want)
}

func (s SystemStatus) ToMap() map[string]any {
	issues := make([]map[string]any, 0, len(s.HealthIssues))
	for _, i := range s.HealthIssues {
		issues = append(issues, i.ToMap())
	}
	out := map[string]any{
		"source":          s.Source.String(),
		"version":         s.Version,
		"is_healthy":      s.IsHealthy,
		"start_time":      nil,
		"branch":          nilIfEmpty(s.Branch),
		"runtime_version": nilIfEmpty(s.RuntimeVersion),
		"os_name":         nilIfEmpty(s.OsName),
		"health_issues":   issues,
	}
	if s.StartTime != nil {
		out["start_time"] = s.StartTime.ToMap()
	}
	return out
}

// MapSystemStatus combines a status payload and the current health checks.
// The instance is healthy when no checks are reported.
func MapSystemStatus(service arr.Service, st ServiceStatus, checks HealthChecks) SystemStatus {
	issues := make([]HealthIssue, 0, len(checks))
	for _, c := range checks {
		issues = append(issues, HealthIssue{
			Type:    c.Type,
			Message: c.Message,
			Source:  c.Source,
			WikiURL: c.WikiURL,
		})
	}

	out := SystemStatus{
		Source:         service,
		Version:        st.Version,
		IsHealthy:      len(issues) == 0,
		Branch:         st.Branch,
		RuntimeVersion: st.RuntimeVersion,
		OsName:         st.OsName,
		HealthIssues:   issues,
	}
	if st.StartTime != "" {
		if ts, err := value.ParseTimestamp(st.StartTime); err == nil {
			out.StartTime = &ts
		}
	}
	return out
}

// Image is an entry of the images array on *arr library records.
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url"`
	RemoteURL string `json:"remoteUrl"`
}

// ExtractImage returns the remote URL (falling back to the local one) of the
// first image with the given cover type.
func ExtractImage(images []Image, coverType string) string {
	for _, img := range images {
		if img.CoverType != coverType {
			continue
		}
		if img.RemoteURL != "" {
			return img.RemoteURL
		}
		return img.URL
	}
	return ""
}

// DiskSpace is one entry of the diskspace endpoint.
type DiskSpace struct {
	Path       string `json:"path"`
	Label      string `json:"label"`
	FreeSpace  int64  `json:"freeSpace"`
	TotalSpace int64  `json:"totalSpace"`
}

func (d DiskSpace) Free() value.FileSize  { return value.MustFileSize(d.FreeSpace) }
func (d DiskSpace) Total() value.FileSize { return value.MustFileSize(d.TotalSpace) }
func (d DiskSpace) Used() value.FileSize  { return d.Total().Subtract(d.Free()) }

// UsedPercentage is rounded to two decimals; an empty disk reports 0.
func (d DiskSpace) UsedPercentage() float64 {
	return usedPercentage(d.Used(), d.Total())
}

func (d DiskSpace) FreePercentage() float64 {
	return 100 - d.UsedPercentage()
}

func (d DiskSpace) ToMap() map[string]any {
	return map[string]any{
		"path":        d.Path,
		"label":       d.Label,
		"free_space":  d.FreeSpace,
		"total_space": d.TotalSpace,
	}
}

type DiskSpaces []DiskSpace

func (c DiskSpaces) TotalFree() value.FileSize {
	var total value.FileSize
	for _, d := range c {
		total = total.Add(d.Free())
	}
	return total
}

func (c DiskSpaces) Total() value.FileSize {
	var total value.FileSize
	for _, d := range c {
		total = total.Add(d.Total())
	}
	return total
}

func (c DiskSpaces) TotalUsed() value.FileSize {
	return c.Total().Subtract(c.TotalFree())
}

func (c DiskSpaces) UsedPercentage() float64 {
	return usedPercentage(c.TotalUsed(), c.Total())
}

func (c DiskSpaces) FreePercentage() float64 {
	return 100 - c.UsedPercentage()
}

func usedPercentage(used, total value.FileSize) float64 {
	if total.IsZero() {
		return 0
	}
	p := float64(used.Bytes()) / float64(total.Bytes()) * 100
	return math.Round(p*100) / 100
}
