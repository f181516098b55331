package dto

// Star is the sky coordinates and story text that an address owner registers.
type Star struct {
	RA    string `json:"ra"`
	Dec   string `json:"dec"`
	Story string `json:"story"`
}

// StarRecord is the structured content encoded into a non-genesis block body.
// Address is the PEM encoded RSA public key of the owner.
type StarRecord struct {
	Address string `json:"address"`
	Star    *Star  `json:"star"`
}
