package ui

import (
	"fmt"
	"strings"
	"time"
)

// Summary describes the outcome of a provisioning run.
type Summary struct {
	ProjectID      string
	Region         string
	Zone           string
	Namespace      string
	InstanceName   string
	InstanceReused bool // notebook existed before the run
	ImageURI       string
	ClusterName    string
	ServiceAccount string
	BucketName     string
	PlatformHost   string
	Elapsed        time.Duration
}

// RenderSummary renders the completion summary of a provisioning run.
func RenderSummary(s Summary, styled bool) string {
	p := newPalette(styled)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(p.title(fmt.Sprintf("Lab ready in project %s", s.ProjectID)))
	if s.Elapsed > 0 {
		b.WriteString(p.dim(fmt.Sprintf("  (%s)", s.Elapsed.Round(time.Second))))
	}
	b.WriteString("\n\n")

	b.WriteString(p.section("Workstation"))
	b.WriteString("\n")
	if s.InstanceReused {
		fmt.Fprintf(&b, "  %s notebook %s (already existed, build skipped)\n", p.warn(warnMark), s.InstanceName)
	} else {
		fmt.Fprintf(&b, "  %s notebook %s\n", p.ok(checkMark), s.InstanceName)
		if s.ImageURI != "" {
			fmt.Fprintf(&b, "       image %s\n", s.ImageURI)
		}
	}

	b.WriteString(p.section("Infrastructure"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s cluster %s (%s)\n", p.ok(checkMark), s.ClusterName, s.Zone)
	fmt.Fprintf(&b, "  %s service account %s\n", p.ok(checkMark), s.ServiceAccount)
	fmt.Fprintf(&b, "  %s bucket gs://%s\n", p.ok(checkMark), s.BucketName)

	b.WriteString(p.section("Pipelines"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s installed in namespace %s\n", p.ok(checkMark), s.Namespace)
	if s.PlatformHost != "" {
		fmt.Fprintf(&b, "  %s UI https://%s\n", p.ok(checkMark), s.PlatformHost)
	} else {
		fmt.Fprintf(&b, "  %s UI hostname not published yet\n", p.warn(warnMark))
		b.WriteString(p.dim(fmt.Sprintf("       check later with: kubectl -n %s get configmap inverse-proxy-config\n", s.Namespace)))
	}

	return b.String()
}
