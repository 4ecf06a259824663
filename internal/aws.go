package internal

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// fallbackRegion is used when the profile does not configure one; STS
// answers GetCallerIdentity from any region.
const fallbackRegion = "us-east-1"

// Identity is the caller identity STS reports for a profile.
type Identity struct {
	Profile string
	Account string
	Arn     string
	UserID  string
}

// WhoAmI resolves the caller identity of profile using the same shared
// files awsctx reads its profiles from.
func WhoAmI(ctx context.Context, cfg Config, profile string) (*Identity, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(profile),
		config.WithSharedConfigFiles([]string{cfg.ConfigFile}),
		config.WithSharedCredentialsFiles([]string{cfg.CredentialsFile}),
		config.WithDefaultRegion(fallbackRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", profile, err)
	}

	out, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &Identity{
		Profile: profile,
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
