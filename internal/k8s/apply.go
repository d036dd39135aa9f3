package k8s

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/dynamic"
)

const fieldManager = "mlopslab"

// ApplyManifests applies a multi-document YAML stream to the cluster using
// server-side apply, so repeated installs are idempotent.
func (c *clientSet) ApplyManifests(ctx context.Context, namespace string, stream []byte) error {
	objects, err := splitDocuments(stream)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		if err := c.applyObject(ctx, namespace, obj); err != nil {
			return err
		}
	}
	return nil
}

func (c *clientSet) applyObject(ctx context.Context, namespace string, obj *unstructured.Unstructured) error {
	gvk := obj.GroupVersionKind()
	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return fmt.Errorf("resolving %s %s: %w", gvk.Kind, obj.GetName(), err)
	}

	var resource dynamic.ResourceInterface = c.dynamic.Resource(mapping.Resource)
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		ns := effectiveNamespace(obj.GetNamespace(), namespace)
		obj.SetNamespace(ns)
		resource = c.dynamic.Resource(mapping.Resource).Namespace(ns)
	}

	raw, err := json.Marshal(obj.Object)
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", gvk.Kind, obj.GetName(), err)
	}

	force := true
	_, err = resource.Patch(ctx, obj.GetName(), types.ApplyPatchType, raw, metav1.PatchOptions{
		FieldManager: fieldManager,
		Force:        &force,
	})
	if err != nil {
		return fmt.Errorf("applying %s %s: %w", gvk.Kind, obj.GetName(), err)
	}
	c.log.V(1).Info("applied manifest", "kind", gvk.Kind, "name", obj.GetName())
	return nil
}

// splitDocuments parses a multi-document YAML or JSON stream, dropping empty
// documents.
func splitDocuments(stream []byte) ([]*unstructured.Unstructured, error) {
	decoder := yaml.NewYAMLOrJSONDecoder(bytes.NewReader(stream), 4096)

	var objects []*unstructured.Unstructured
	for {
		obj := &unstructured.Unstructured{}
		err := decoder.Decode(obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding manifest: %w", err)
		}
		if len(obj.Object) == 0 {
			continue
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// effectiveNamespace picks the namespace a namespaced object is applied in.
// An override wins over the namespace baked into the manifest.
func effectiveNamespace(objNamespace, override string) string {
	if override != "" {
		return override
	}
	if objNamespace != "" {
		return objNamespace
	}
	return metav1.NamespaceDefault
}
