// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	// InstantiatePairReplyID tags the callback of a pair deployment.
	InstantiatePairReplyID uint64 = 1

	// MaxProposalTTL caps how long an ownership proposal stays claimable, in
	// seconds.
	MaxProposalTTL uint64 = 14 * 24 * 60 * 60

	// PairLabel is the label given to every deployed pair contract.
	PairLabel = "pairfactory pair"
)

// Event actions
const (
	EventUpdateConfig          = "update_config"
	EventUpdatePairType        = "update_pair_type"
	EventCreatePair            = "create_pair"
	EventRegister              = "register"
	EventDeregister            = "deregister"
	EventProposeOwner          = "propose_new_owner"
	EventDropOwnershipProposal = "drop_ownership_proposal"
	EventClaimOwnership        = "claim_ownership"
)

// Event attributes
const (
	AttrPair             = "pair"
	AttrPairType         = "pair_type"
	AttrPairContractAddr = "pair_contract_addr"
	AttrNewOwner         = "new_owner"
	AttrExpiresAt        = "expires_at"
	AttrField            = "field"
)
