package naming

import "fmt"

func Notebook(prefix string) string {
	return fmt.Sprintf("%s-notebook", prefix)
}

func Image(projectID, name, tag string) string {
	return fmt.Sprintf("gcr.io/%s/%s:%s", projectID, name, tag)
}

func StagingBucket(projectID string) string {
	return fmt.Sprintf("%s_cloudbuild", projectID)
}

func BuildSourceObject(prefix string, unix int64) string {
	return fmt.Sprintf("source/%s-%d.tgz", prefix, unix)
}

func SSHKeyFile(instance string) string {
	return fmt.Sprintf("%s-ssh.pem", instance)
}

func CredentialSecret() string {
	return "user-gcp-sa"
}
