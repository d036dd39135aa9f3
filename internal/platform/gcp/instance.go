package gcp

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"

	computepb "cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/api/iterator"
	"google.golang.org/protobuf/proto"
	"sigs.k8s.io/yaml"
)

const (
	defaultMachineType = "n1-standard-4"
	defaultBootDiskGB  = 200
	bootImage          = "projects/cos-cloud/global/images/family/cos-stable"
)

// FindInstance returns the named instance in the zone, or nil when it does
// not exist.
func (c *RealClient) FindInstance(ctx context.Context, projectID, zone, name string) (*Instance, error) {
	it := c.instances.List(ctx, &computepb.ListInstancesRequest{
		Project: projectID,
		Zone:    zone,
		Filter:  proto.String(fmt.Sprintf("name = %q", name)),
	})
	for {
		inst, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("listing instances in %s/%s: %w", projectID, zone, err)
		}
		if inst.GetName() == name {
			return &Instance{
				ID:     inst.GetId(),
				Name:   inst.GetName(),
				Zone:   path.Base(inst.GetZone()),
				Status: inst.GetStatus(),
			}, nil
		}
	}
}

// CreateInstance creates a workstation instance and waits until the insert
// operation completes.
func (c *RealClient) CreateInstance(ctx context.Context, projectID, zone string, opts InstanceOpts) error {
	resource, err := instanceResource(zone, opts)
	if err != nil {
		return fmt.Errorf("composing instance %s: %w", opts.Name, err)
	}
	c.log.Info("creating instance", "name", opts.Name, "zone", zone)
	op, err := c.instances.Insert(ctx, &computepb.InsertInstanceRequest{
		Project:          projectID,
		Zone:             zone,
		InstanceResource: resource,
	})
	if err != nil {
		return fmt.Errorf("creating instance %s: %w", opts.Name, err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for instance %s: %w", opts.Name, err)
	}
	return nil
}

// instanceResource assembles the API representation of a workstation
// instance: a container-optimized boot disk, the default network with an
// ephemeral public address and cloud-platform API access.
func instanceResource(zone string, opts InstanceOpts) (*computepb.Instance, error) {
	machineType := opts.MachineType
	if machineType == "" {
		machineType = defaultMachineType
	}
	diskGB := opts.BootDiskGB
	if diskGB == 0 {
		diskGB = defaultBootDiskGB
	}

	items := []*computepb.Items{
		{Key: proto.String("google-logging-enabled"), Value: proto.String("true")},
	}
	if opts.ContainerImage != "" {
		declaration, err := containerDeclaration(opts.Name, opts.ContainerImage)
		if err != nil {
			return nil, err
		}
		items = append(items, &computepb.Items{
			Key:   proto.String("gce-container-declaration"),
			Value: proto.String(declaration),
		})
	}
	for _, key := range slices.Sorted(maps.Keys(opts.Metadata)) {
		items = append(items, &computepb.Items{
			Key:   proto.String(key),
			Value: proto.String(opts.Metadata[key]),
		})
	}

	return &computepb.Instance{
		Name:        proto.String(opts.Name),
		MachineType: proto.String(fmt.Sprintf("zones/%s/machineTypes/%s", zone, machineType)),
		Disks: []*computepb.AttachedDisk{{
			Boot:       proto.Bool(true),
			AutoDelete: proto.Bool(true),
			InitializeParams: &computepb.AttachedDiskInitializeParams{
				SourceImage: proto.String(bootImage),
				DiskSizeGb:  proto.Int64(diskGB),
				DiskType:    proto.String(fmt.Sprintf("zones/%s/diskTypes/pd-standard", zone)),
			},
		}},
		NetworkInterfaces: []*computepb.NetworkInterface{{
			Network: proto.String("global/networks/default"),
			AccessConfigs: []*computepb.AccessConfig{{
				Name: proto.String("External NAT"),
				Type: proto.String(computepb.AccessConfig_ONE_TO_ONE_NAT.String()),
			}},
		}},
		ServiceAccounts: []*computepb.ServiceAccount{{
			Email:  proto.String("default"),
			Scopes: []string{cloudPlatformScope},
		}},
		Metadata: &computepb.Metadata{Items: items},
		Labels:   opts.Labels,
	}, nil
}

type containerManifest struct {
	Spec containerManifestSpec `json:"spec"`
}

type containerManifestSpec struct {
	Containers    []manifestContainer `json:"containers"`
	RestartPolicy string              `json:"restartPolicy"`
}

type manifestContainer struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// containerDeclaration renders the gce-container-declaration metadata value
// understood by Container-Optimized OS.
func containerDeclaration(name, image string) (string, error) {
	manifest := containerManifest{
		Spec: containerManifestSpec{
			Containers:    []manifestContainer{{Name: name, Image: image}},
			RestartPolicy: "Always",
		},
	}
	raw, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("rendering container declaration: %w", err)
	}
	return string(raw), nil
}
