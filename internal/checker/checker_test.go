package checker

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solweave/idlvet/internal/output"
	"github.com/solweave/idlvet/internal/report"
	"github.com/solweave/idlvet/internal/rules"
)

const anchorIDL = `{
	"metadata": {"name": "amm_v3", "description": "Created with Anchor"},
	"instructions": [{"name": "swap", "discriminator": [1, 2, 3, 4, 5, 6, 7, 8]}],
	"accounts": [{"name": "Pool"}]
}`

const noAccountsIDL = `{
	"metadata": {"name": "amm_v3", "description": "Created with Anchor"},
	"instructions": [{"name": "swap", "discriminator": [1, 2, 3, 4, 5, 6, 7, 8]}]
}`

const instructionsSource = `pub const SWAP_IX_DISCM: [u8; 8] = [248, 198, 158, 145, 225, 117, 135, 200];
pub const SWAP_IX_ACCOUNTS_LEN: usize = 2;

pub struct SwapIxData {
    pub amount: u64,
}

pub struct SwapKeys {
    pub payer: Pubkey,
    pub pool: Pubkey,
}

impl SwapIxData {
    pub fn try_to_vec(&self) -> std::io::Result<Vec<u8>> {
        borsh::to_vec(self)
    }
    pub fn from_bytes(buf: &[u8]) -> Result<Self, std::io::Error> {
        todo!()
    }
}

impl Default for SwapIxData {
    fn default() -> Self {
        todo!()
    }
}

impl From<&[Pubkey]> for SwapKeys {
    fn from(pubkeys: &[Pubkey]) -> Self {
        todo!()
    }
}

impl SwapKeys {
    pub fn to_vec(&self) -> Vec<Pubkey> {
        vec![self.payer, self.pool]
    }
}
`

const accountsSource = `pub const POOL_ACCOUNT_DISCM: [u8; 8] = [241, 154, 109, 4, 17, 177, 109, 188];

pub struct Pool {
    pub fees: u64,
}

impl Pool {
    pub fn try_to_vec(&self) -> std::io::Result<Vec<u8>> {
        todo!()
    }
    pub fn from_bytes(buf: &[u8]) -> Result<Self, std::io::Error> {
        todo!()
    }
}

impl Default for Pool {
    fn default() -> Self {
        todo!()
    }
}
`

const eventsSource = `pub const SWAP_EVENT_DISCM: [u8; 8] = [81, 108, 227, 190, 205, 208, 10, 196];

pub struct SwapEvent {
    pub amount: u64,
}

impl SwapEvent {
    pub fn try_to_vec(&self) -> std::io::Result<Vec<u8>> {
        todo!()
    }
    pub fn from_bytes(buf: &[u8]) -> Result<Self, std::io::Error> {
        todo!()
    }
}

impl Default for SwapEvent {
    fn default() -> Self {
        todo!()
    }
}
`

const parsersSource = `pub enum ProgramInstruction {
    Swap(SwapIxData),
}

pub enum ProgramAccount {
    Pool(Pool),
}

pub fn parse_instruction(data: &[u8]) -> Result<ProgramInstruction, std::io::Error> {
    todo!()
}

pub fn try_unpack_account(data: &[u8]) -> Result<ProgramAccount, std::io::Error> {
    todo!()
}
`

const parsersNoAccountsSource = `pub enum ProgramInstruction {
    Swap(SwapIxData),
}

pub fn parse_instruction(data: &[u8]) -> Result<ProgramInstruction, std::io::Error> {
    todo!()
}
`

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// completeCrate lays down a crate satisfying every capability contract.
func completeCrate(t *testing.T, root string) {
	t.Helper()
	write(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"amm_v3_interface\"\nversion = \"0.1.0\"\n")
	write(t, filepath.Join(root, "idl.json"), anchorIDL)
	write(t, filepath.Join(root, "src", "instructions", "swap.rs"), instructionsSource)
	write(t, filepath.Join(root, "src", "accounts", "pool.rs"), accountsSource)
	write(t, filepath.Join(root, "src", "events", "swap_event.rs"), eventsSource)
	write(t, filepath.Join(root, "src", "parsers", "instructions.rs"), parsersSource)
}

func countAll(rep *report.Report, prefix string) int {
	count := 0
	for _, res := range rep.Results {
		for _, d := range res.Details {
			if strings.HasPrefix(d, prefix) {
				count++
			}
		}
	}
	return count
}

func findResult(t *testing.T, rep *report.Report, check string) rules.Result {
	t.Helper()
	for _, res := range rep.Results {
		if res.Check == check {
			return res
		}
	}
	t.Fatalf("no result for check %q", check)
	return rules.Result{}
}

func TestCheckProjectCompleteCrate(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)

	rep := New(Options{}).CheckProject(root)

	assert.True(t, rep.Passed())
	assert.Zero(t, countAll(rep, "error:"))
	assert.Zero(t, countAll(rep, "warning:"))
	assert.Equal(t, "anchor", rep.IDLKind)
	assert.Equal(t, "amm_v3", rep.Program)
	assert.True(t, rep.HasAccounts)
}

func TestCheckProjectMissingRequiredAccountsModule(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "src", "accounts")))

	rep := New(Options{}).CheckProject(root)

	assert.False(t, rep.Passed())
	assert.Equal(t, 1, countAll(rep, "error:"))

	accounts := findResult(t, rep, "accounts")
	assert.False(t, accounts.Passed)
	assert.Contains(t, accounts.Message, "should exist but was not generated")
}

func TestCheckProjectKeyListIncompleteInOneModule(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)
	// The same key list type in a second module, missing to_vec there.
	write(t, filepath.Join(root, "src", "types", "keys.rs"), `pub struct SwapKeys {
    pub payer: Pubkey,
}

impl From<&[Pubkey]> for SwapKeys {
    fn from(pubkeys: &[Pubkey]) -> Self {
        todo!()
    }
}
`)

	rep := New(Options{}).CheckProject(root)

	assert.False(t, rep.Passed())
	assert.Equal(t, 1, countAll(rep, "error:"))

	cross := findResult(t, rep, "cross-module")
	require.False(t, cross.Passed)
	assert.Contains(t, cross.Details[0], "types::SwapKeys")
	assert.NotContains(t, cross.Details[0], "instructions::SwapKeys")
}

func TestCheckProjectAccountsOverGeneration(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)
	write(t, filepath.Join(root, "idl.json"), noAccountsIDL)
	write(t, filepath.Join(root, "src", "parsers", "instructions.rs"), parsersNoAccountsSource)

	rep := New(Options{}).CheckProject(root)

	assert.False(t, rep.Passed())
	accounts := findResult(t, rep, "accounts")
	assert.False(t, accounts.Passed)
	assert.Contains(t, accounts.Message, "no accounts section")
}

func TestCheckProjectWithoutIDLDegrades(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "idl.json")))
	// No accounts section is assumed, so the accounts-bound artifacts must
	// go too.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "src", "accounts")))
	write(t, filepath.Join(root, "src", "parsers", "instructions.rs"), parsersNoAccountsSource)

	rep := New(Options{}).CheckProject(root)

	assert.Equal(t, "unknown", rep.IDLKind)
	assert.False(t, rep.HasAccounts)
	assert.True(t, rep.Passed())
}

func TestCheckProjectNamingPass(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)
	write(t, filepath.Join(root, "src", "types", "tick.rs"), `pub struct Tick {
    pub tickSpacing: u16,
}

impl Tick {
    pub fn try_to_vec(&self) -> std::io::Result<Vec<u8>> {
        todo!()
    }
    pub fn from_bytes(buf: &[u8]) -> Result<Self, std::io::Error> {
        todo!()
    }
}

impl Default for Tick {
    fn default() -> Self {
        todo!()
    }
}
`)

	rep := New(Options{Naming: true}).CheckProject(root)
	naming := findResult(t, rep, "naming")
	assert.True(t, naming.Passed)
	assert.Equal(t, 1, countAll(rep, "warning:"))

	rep = New(Options{StrictNaming: true}).CheckProject(root)
	naming = findResult(t, rep, "naming")
	assert.False(t, naming.Passed)
}

func TestCheckProjectModuleStats(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)

	rep := New(Options{}).CheckProject(root)

	require.Len(t, rep.Modules, 5)
	byName := make(map[string]report.ModuleStats)
	for _, m := range rep.Modules {
		byName[m.Name] = m
	}
	assert.True(t, byName["instructions"].Generated)
	assert.Equal(t, 2, byName["instructions"].Types)
	assert.Equal(t, 2, byName["instructions"].Constants)
	assert.False(t, byName["types"].Generated)
}

func TestCheckProjectIdempotent(t *testing.T) {
	root := t.TempDir()
	completeCrate(t, root)
	// An imperfection makes the detail ordering observable.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "src", "events")))
	write(t, filepath.Join(root, "src", "events", "swap_event.rs"), "pub struct SwapEvent {}\n")

	chk := New(Options{})
	renderYAML := func() string {
		var buf bytes.Buffer
		printer := output.NewPrinter(output.Options{Out: &buf, Color: false})
		rep := chk.CheckProject(root)
		require.NoError(t, report.NewRenderer(printer).RenderYAML(&buf, rep))
		return buf.String()
	}

	assert.Equal(t, renderYAML(), renderYAML())
}

func TestCheckBatch(t *testing.T) {
	root := t.TempDir()

	passing := filepath.Join(root, "amm_v3_interface")
	completeCrate(t, passing)

	failing := filepath.Join(root, "broken_interface")
	completeCrate(t, failing)
	write(t, filepath.Join(failing, "Cargo.toml"), "[package]\nname = \"broken_interface\"\n")
	require.NoError(t, os.RemoveAll(filepath.Join(failing, "src", "parsers")))

	// A child without a manifest is not a project.
	write(t, filepath.Join(root, "notes", "README.md"), "scratch")

	batch, err := New(Options{}).CheckBatch(root)
	require.NoError(t, err)

	require.Len(t, batch.Projects, 2)
	assert.Equal(t, 1, batch.PassedCount())
	assert.False(t, batch.Passed())

	assert.Equal(t, "amm_v3_interface", batch.Projects[0].Name)
	assert.True(t, batch.Projects[0].Passed)

	assert.Equal(t, "broken_interface", batch.Projects[1].Name)
	assert.False(t, batch.Projects[1].Passed)
	assert.NotEmpty(t, batch.Projects[1].Failures)
}

func TestCheckBatchEmptyRoot(t *testing.T) {
	batch, err := New(Options{}).CheckBatch(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, batch.Projects)
	assert.True(t, batch.Passed())
}
